// Package domain holds the types shared by every entity package: sentinel
// errors, field-level validation errors and the Actor on whose behalf an
// operation runs. Tour and step rules live in domain/tour.
package domain

// Package models contains GORM database models for the infrastructure layer.
// They are kept apart from the domain records they convert to and from.
package models

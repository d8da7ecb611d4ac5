// Package models defines the persistence models of the item feature.
package models

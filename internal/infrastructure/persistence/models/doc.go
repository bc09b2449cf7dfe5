// Package models contains the GORM persistence models for the store.
//
// Models are separate from domain entities so that column layout, indexes
// and JSON encodings stay out of the domain layer. Each model exposes
// ToDomain and FromDomain for the conversion in both directions.
//
// Array-valued fields (product images, SEO keywords, order items, hero
// slides, user back-references) are stored as JSON arrays through JSONList.
package models

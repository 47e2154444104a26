// Package models contains GORM persistence models. Domain entities carry no
// ORM tags; each model here maps one table and converts to and from its
// domain type with ToDomain / FromDomain.
//
// Dates are stored as YYYY-MM-DD text so lexical comparison in SQL matches
// calendar order on both SQLite and PostgreSQL.
package models

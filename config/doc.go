// Package config decodes the population-generation configuration (a set
// of epicentres, each with a location, population count, spread radius,
// and distribution kind) and samples coordinate points from it, per
// spec §6 and grounded on original_source/population.py.
package config

// Package parks holds reference data for NYC parks that take tennis
// reservations. The data is static: park names, addresses, coordinates,
// and court counts change rarely and are not scraped on the hot path.
package parks

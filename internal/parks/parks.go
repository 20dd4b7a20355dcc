package parks

import "math"

// Default coordinates (Central Park) used when a park's stored
// coordinates are missing or invalid, so map rendering never receives a
// point outside the city.
const (
	DefaultLat = 40.7831
	DefaultLon = -73.9712
)

// CentralParkID is the one reservation id with divergent page markup;
// it is kept as reference data but excluded from scraping.
const CentralParkID = 12

// Info describes one park offering reservable tennis courts.
type Info struct {
	ID         int     `db:"park_id" json:"park_id"`
	Name       string  `db:"park_name" json:"park_name"`
	Address    string  `db:"address" json:"address"`
	Lat        float64 `db:"lat" json:"lat"`
	Lon        float64 `db:"lon" json:"lon"`
	CourtCount int     `db:"num_courts" json:"num_courts"`
	Phone      string  `db:"phone" json:"phone,omitempty"`
	Website    string  `db:"website" json:"website,omitempty"`
}

var all = []Info{
	{ID: 1, Name: "Mill Pond Park", Address: "River Ave. & E. 151 St., Bronx", Lat: 40.8196, Lon: -73.9312, CourtCount: 16},
	{ID: 2, Name: "Crotona Park", Address: "Crotona Ave. & E. 173 St., Bronx", Lat: 40.8389, Lon: -73.8947, CourtCount: 20},
	{ID: 3, Name: "St. Mary's Park", Address: "St. Ann's Ave. & E. 145 St., Bronx", Lat: 40.8106, Lon: -73.9128, CourtCount: 8},
	{ID: 4, Name: "Lincoln Terrace Park", Address: "Buffalo Ave. & East New York Ave., Brooklyn", Lat: 40.6668, Lon: -73.9241, CourtCount: 9},
	{ID: 5, Name: "McCarren Park", Address: "Lorimer St. & Driggs Ave., Brooklyn", Lat: 40.7210, Lon: -73.9511, CourtCount: 7},
	{ID: 6, Name: "Prospect Park Tennis Center", Address: "50 Parkside Ave., Brooklyn", Lat: 40.6544, Lon: -73.9646, CourtCount: 11},
	{ID: 7, Name: "Fort Greene Park", Address: "Myrtle Ave. & N. Portland Ave., Brooklyn", Lat: 40.6908, Lon: -73.9756, CourtCount: 6},
	{ID: 8, Name: "Riverside Park (96th St.)", Address: "Riverside Dr. & W. 96 St., Manhattan", Lat: 40.7930, Lon: -73.9750, CourtCount: 10},
	{ID: 9, Name: "Riverside Park (119th St.)", Address: "Riverside Dr. & W. 119 St., Manhattan", Lat: 40.8093, Lon: -73.9652, CourtCount: 10},
	{ID: 10, Name: "Randall's Island Park", Address: "1 Randall's Island, Manhattan", Lat: 40.7932, Lon: -73.9213, CourtCount: 11},
	{ID: 11, Name: "Frederick Johnson Playground", Address: "W. 151 St. & Seventh Ave., Manhattan", Lat: 40.8259, Lon: -73.9375, CourtCount: 8},
	{ID: 12, Name: "Central Park Tennis Center", Address: "Midpark at W. 96 St., Manhattan", Lat: 40.7894, Lon: -73.9620, CourtCount: 26},
	{ID: 13, Name: "Flushing Meadows Corona Park", Address: "Meridian Rd., Queens", Lat: 40.7498, Lon: -73.8408, CourtCount: 8},
}

// All returns every reference park with coordinates already validated.
func All() []Info {
	out := make([]Info, len(all))
	for i, p := range all {
		out[i] = sanitize(p)
	}
	return out
}

// ByID looks up one park. The boolean reports whether the id is known.
func ByID(id int) (Info, bool) {
	for _, p := range all {
		if p.ID == id {
			return sanitize(p), true
		}
	}
	return Info{}, false
}

// ScrapeIDs returns the park ids the scraper should visit: every known
// id except Central Park.
func ScrapeIDs() []int {
	ids := make([]int, 0, len(all)-1)
	for _, p := range all {
		if p.ID == CentralParkID {
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids
}

// sanitize replaces invalid coordinates with the documented default.
func sanitize(p Info) Info {
	if !validCoords(p.Lat, p.Lon) {
		p.Lat = DefaultLat
		p.Lon = DefaultLon
	}
	return p
}

// validCoords reports whether lat/lon are finite and within geographic
// bounds.
func validCoords(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180 && !(lat == 0 && lon == 0)
}

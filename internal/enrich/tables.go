package enrich

// Static lookup tables backing the heuristic tier. All of them are coarse
// public signals: representative names per region, digit prefixes with a
// documented history of unsolicited calling, and one representative
// coordinate per region. Loaded once, never mutated.

var ownerNamesByRegion = map[string][]string{
	"US": {"John Smith", "Sarah Johnson", "Michael Brown", "Emily Davis"},
	"NG": {"Adebayo Okafor", "Fatima Abubakar", "Chukwuemeka Nwosu", "Aisha Bello"},
	"GB": {"James Wilson", "Emma Thompson", "Oliver Jones", "Sophia Williams"},
	"IN": {"Rajesh Kumar", "Priya Sharma", "Amit Patel", "Ananya Reddy"},
	"CA": {"David Martin", "Lisa Anderson", "Ryan Taylor", "Jessica Thomas"},
}

var emailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com"}

var socialPlatforms = []string{"linkedin", "twitter", "facebook", "instagram"}

// spamPrefixes lists E.164 digit prefixes (country code included) associated
// with premium-rate or telemarketing ranges. Matching a prefix raises the
// spam probability; it proves nothing on its own.
var spamPrefixes = []string{
	"1900",  // US premium rate
	"1976",  // Jamaica, common one-ring scam origin
	"44870", // UK revenue-share range
	"91140", // India telemarketing series
	"2347",  // NG range with heavy bulk-SMS use
}

// regionSeat holds one representative coordinate per region, used for coarse
// geolocation when no finer signal exists.
type regionSeat struct {
	City      string
	State     string
	Country   string
	Latitude  float64
	Longitude float64
}

var regionSeats = map[string]regionSeat{
	"US": {City: "Washington", State: "District of Columbia", Country: "United States", Latitude: 38.8951, Longitude: -77.0364},
	"CA": {City: "Ottawa", State: "Ontario", Country: "Canada", Latitude: 45.4215, Longitude: -75.6972},
	"GB": {City: "London", State: "England", Country: "United Kingdom", Latitude: 51.5074, Longitude: -0.1278},
	"NG": {City: "Abuja", State: "Federal Capital Territory", Country: "Nigeria", Latitude: 9.0765, Longitude: 7.3986},
	"IN": {City: "New Delhi", State: "Delhi", Country: "India", Latitude: 28.6139, Longitude: 77.2090},
	"DE": {City: "Berlin", State: "Berlin", Country: "Germany", Latitude: 52.5200, Longitude: 13.4050},
	"FR": {City: "Paris", State: "Île-de-France", Country: "France", Latitude: 48.8566, Longitude: 2.3522},
	"NL": {City: "Amsterdam", State: "North Holland", Country: "Netherlands", Latitude: 52.3676, Longitude: 4.9041},
	"ES": {City: "Madrid", State: "Community of Madrid", Country: "Spain", Latitude: 40.4168, Longitude: -3.7038},
	"IT": {City: "Rome", State: "Lazio", Country: "Italy", Latitude: 41.9028, Longitude: 12.4964},
	"BR": {City: "Brasília", State: "Federal District", Country: "Brazil", Latitude: -15.7939, Longitude: -47.8828},
	"ZA": {City: "Pretoria", State: "Gauteng", Country: "South Africa", Latitude: -25.7479, Longitude: 28.2293},
	"KE": {City: "Nairobi", State: "Nairobi County", Country: "Kenya", Latitude: -1.2921, Longitude: 36.8219},
	"GH": {City: "Accra", State: "Greater Accra", Country: "Ghana", Latitude: 5.6037, Longitude: -0.1870},
	"AU": {City: "Canberra", State: "Australian Capital Territory", Country: "Australia", Latitude: -35.2809, Longitude: 149.1300},
	"JP": {City: "Tokyo", State: "Tokyo", Country: "Japan", Latitude: 35.6762, Longitude: 139.6503},
	"CN": {City: "Beijing", State: "Beijing", Country: "China", Latitude: 39.9042, Longitude: 116.4074},
	"AE": {City: "Abu Dhabi", State: "Abu Dhabi", Country: "United Arab Emirates", Latitude: 24.4539, Longitude: 54.3773},
	"MX": {City: "Mexico City", State: "CDMX", Country: "Mexico", Latitude: 19.4326, Longitude: -99.1332},
	"JM": {City: "Kingston", State: "Surrey", Country: "Jamaica", Latitude: 17.9714, Longitude: -76.7931},
}

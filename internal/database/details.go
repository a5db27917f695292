package database

// ConnectionDetails is the subset of connection parameters that ends up in
// the generated provider document. Drivers extract it from their DSN format;
// the generators never see the raw DSN.
type ConnectionDetails struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

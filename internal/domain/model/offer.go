package model

// DefaultTableName is used when an offer does not name its source table.
const DefaultTableName = "Daily Stats"

// Offer is one configured data source: where to fetch rows and how to read
// their columns.
type Offer struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	APIKey    string   `json:"apiKey"`
	BaseID    string   `json:"baseId"`
	TableName string   `json:"tableName"`
	Mapping   FieldMap `json:"mapping"`
}

package catalog

// Service is one treatment offered for an item, with its current price.
type Service struct {
	Type  string  `dynamodbav:"type" json:"type"`
	Price float64 `dynamodbav:"price" json:"price"`
}

// Item is a garment or article inside a section.
type Item struct {
	Name     string    `dynamodbav:"name" json:"name"`
	Services []Service `dynamodbav:"services" json:"services"`
}

// Section is one document in the catalog table: a named group embedding its
// items and their services. Deleting a section removes the whole subtree.
type Section struct {
	ID    string `dynamodbav:"id" json:"id"` // PK
	Name  string `dynamodbav:"name" json:"name"`
	Items []Item `dynamodbav:"items" json:"items"`
}

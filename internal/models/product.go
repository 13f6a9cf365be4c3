// internal/models/product.go
package models

// Product mirrors an item of the catalog table. The table is keyed by productId.
type Product struct {
	ProductID   string  `json:"productId" dynamodbav:"productId"`
	Name        string  `json:"name" dynamodbav:"name"`
	Price       float64 `json:"price" dynamodbav:"price"`
	Category    string  `json:"category" dynamodbav:"category"`
	ImageClass  string  `json:"imageClass,omitempty" dynamodbav:"imageClass,omitempty"`
	Description string  `json:"description,omitempty" dynamodbav:"description,omitempty"`
}

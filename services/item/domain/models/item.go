package models

// Item is the core aggregate for this bounded context: one row of the
// inventory. Every field is required; no range checks apply, so negative
// price or quantity are stored as given. Price must be a finite number.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

// Fields is the client-writable part of an Item. Create and Update both take
// a complete Fields value; there is no partial update.
type Fields struct {
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

// NewItem constructs an unsaved Item. The id is assigned by the database on save.
func NewItem(f Fields) *Item {
	item := &Item{}
	item.Overwrite(f)
	return item
}

// Overwrite replaces every client-writable field. The id is left untouched.
func (i *Item) Overwrite(f Fields) {
	i.Name = f.Name
	i.Description = f.Description
	i.Price = f.Price
	i.Quantity = f.Quantity
}

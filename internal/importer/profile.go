package importer

// Profile describes the column layout of one receipt export format.
// Adding a format is adding a Profile to profiles.
type Profile struct {
	Name        string
	ProductCol  string
	QuantityCol string // optional, defaults to 1
	UnitCol     string // optional when TotalCol is set
	TotalCol    string // optional when UnitCol is set
	CategoryCol string // optional
}

// requiredCols returns the columns that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.ProductCol}

	for _, c := range []string{p.QuantityCol, p.UnitCol, p.TotalCol} {
		if c != "" {
			cols = append(cols, c)
		}
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "bitebudget",
		ProductCol:  "product_name",
		QuantityCol: "quantity",
		UnitCol:     "unit_price",
		TotalCol:    "total_price",
		CategoryCol: "category",
	},
	{
		Name:        "walmart",
		ProductCol:  "Descripción",
		QuantityCol: "Cantidad",
		UnitCol:     "Precio unitario",
		TotalCol:    "Importe",
		CategoryCol: "Departamento",
	},
	{
		Name:        "ticket",
		ProductCol:  "Producto",
		QuantityCol: "Cantidad",
		UnitCol:     "Precio",
		CategoryCol: "Categoría",
	},
	{
		Name:       "simple",
		ProductCol: "Producto",
		TotalCol:   "Importe",
	},
}

package domain

// TopVariant é uma variante de produto agregada por quantidade vendida no
// período. Os campos descritivos são os registrados no item do pedido, não
// no catálogo: renomear um produto não reescreve o histórico.
type TopVariant struct {
	ProductTitle  string  `json:"product_title"`
	ProductHandle *string `json:"product_handle"`
	VariantTitle  *string `json:"variant_title"`
	Thumbnail     *string `json:"thumbnail"`
	Quantity      int     `json:"quantity"`
}

// ProductsAnalyticsResponse é o envelope do endpoint de analytics de produtos
type ProductsAnalyticsResponse struct {
	Range         DateRange     `json:"range"`
	TopVariants   []*TopVariant `json:"top_variants"`
	TotalVariants int           `json:"total_variants"`
}

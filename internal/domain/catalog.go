package domain

// Category is a catalog category as served by the licences API.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Image       string     `json:"image,omitempty"`
	IsActive    bool       `json:"isActive"`
	Order       int        `json:"order"`
	ParentID    string     `json:"parentId,omitempty"`
	DeletedAt   string     `json:"deletedAt,omitempty"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
	Products    []Product  `json:"products,omitempty"`
	Parent      *Category  `json:"parent,omitempty"`
	Children    []Category `json:"children,omitempty"`
}

// Product is a digital licence product.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	ShortDesc     string    `json:"shortDesc,omitempty"`
	Price         float64   `json:"price"`
	ComparePrice  float64   `json:"comparePrice,omitempty"`
	Image         string    `json:"image"`
	Images        []string  `json:"images"`
	StockQuantity int       `json:"stockQuantity"`
	IsActive      bool      `json:"isActive"`
	IsFeatured    bool      `json:"isFeatured"`
	Tags          []string  `json:"tags"`
	MetaTitle     string    `json:"metaTitle,omitempty"`
	MetaDesc      string    `json:"metaDesc,omitempty"`
	CategoryID    string    `json:"categoryId"`
	Category      *Category `json:"category,omitempty"`
	DeletedAt     string    `json:"deletedAt,omitempty"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

// PaginationMeta describes the paging envelope on list responses.
type PaginationMeta struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	PageCount int `json:"pageCount"`
}

// CategoryListResponse is the envelope of GET /categories.
type CategoryListResponse struct {
	Data       []Category     `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// ProductListResponse is the envelope of GET /products.
type ProductListResponse struct {
	Data       []Product      `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// CategoryQuery holds the supported query parameters of GET /categories.
// Zero values are omitted from the outgoing query string.
type CategoryQuery struct {
	IncludeInactive bool
	Page            int
	Limit           int
	Sort            string // "name" or "order"
	Order           string // "asc" or "desc"
}

// ProductQuery holds the supported query parameters of GET /products.
type ProductQuery struct {
	IncludeInactive bool
	CategoryID      string
	Page            int
	Limit           int
	Sort            string // "price", "name", "createdAt", "stockQuantity"
	Order           string // "asc" or "desc"
	Search          string
	MinPrice        float64
	MaxPrice        float64
	Tags            string
	MinStock        int
	MaxStock        int
}

// CreateCategoryRequest is the admin payload for POST /categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
	Order       *int   `json:"order,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
}

// UpdateCategoryRequest is the admin payload for PUT /categories/:id.
// All fields are optional; absent fields are left untouched server-side.
type UpdateCategoryRequest struct {
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
	Order       *int   `json:"order,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
}

// CreateProductRequest is the admin payload for POST /products.
type CreateProductRequest struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug,omitempty"`
	Description   string   `json:"description"`
	ShortDesc     string   `json:"shortDesc,omitempty"`
	Price         float64  `json:"price"`
	ComparePrice  *float64 `json:"comparePrice,omitempty"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	StockQuantity int      `json:"stockQuantity"`
	IsActive      *bool    `json:"isActive,omitempty"`
	IsFeatured    *bool    `json:"isFeatured,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	MetaTitle     string   `json:"metaTitle,omitempty"`
	MetaDesc      string   `json:"metaDesc,omitempty"`
	CategoryID    string   `json:"categoryId"`
}

// UpdateProductRequest is the admin payload for PUT /products/:id.
type UpdateProductRequest struct {
	Name          string   `json:"name,omitempty"`
	Slug          string   `json:"slug,omitempty"`
	Description   string   `json:"description,omitempty"`
	ShortDesc     string   `json:"shortDesc,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	ComparePrice  *float64 `json:"comparePrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Images        []string `json:"images,omitempty"`
	StockQuantity *int     `json:"stockQuantity,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
	IsFeatured    *bool    `json:"isFeatured,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	MetaTitle     string   `json:"metaTitle,omitempty"`
	MetaDesc      string   `json:"metaDesc,omitempty"`
	CategoryID    string   `json:"categoryId,omitempty"`
}

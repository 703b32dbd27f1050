package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams carries the absolute-offset pagination query parameters
// shared by list endpoints.
type ListParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=20"`
}

package fiber

type TablesResponse struct {
	Namespace string   `json:"namespace" example:"sales"`
	Tables    []string `json:"tables"`
	Total     int      `json:"total" example:"2"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"engine_error"`
	Message string `json:"message" example:"schema \"sales\" does not exist"`
}

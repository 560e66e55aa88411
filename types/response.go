package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	OriginalName string `json:"original_name,omitempty"`
	StoredName   string `json:"stored_name,omitempty"`
	Chunks       int    `json:"chunks"`
}

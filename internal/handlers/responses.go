package handlers

// SuccessResponse is the acknowledgement of admin operations
type SuccessResponse struct {
	Success bool `json:"success"`
}

// FilesResponse lists the data files
type FilesResponse struct {
	Files []string `json:"files"`
}

// FileContentResponse carries the content of one data file
type FileContentResponse struct {
	Content string `json:"content"`
}

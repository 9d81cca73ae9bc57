package dto

type RenderMermaidRequest struct {
	Code  string `json:"code" query:"code"`
	Theme string `json:"theme,omitempty" query:"theme"`
}

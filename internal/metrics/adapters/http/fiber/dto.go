package fiber

import "table-counts-service/internal/metrics/core/domain"

type CountRecordResponse struct {
	Table string `json:"table" example:"orders"`
	Date  string `json:"date" example:"2026-10-16"`
	Count int64  `json:"count" example:"3"`
}

type CountsResponse struct {
	Namespace  string                `json:"namespace" example:"sales"`
	Table      string                `json:"table" example:"orders"`
	WindowDays int                   `json:"window_days" example:"5"`
	Records    []CountRecordResponse `json:"records"`
}

// MatrixResponse mirrors domain.MetricsMatrix: Values[i][j] is the count of
// Tables[j] on Dates[i].
type MatrixResponse struct {
	Dates  []string  `json:"dates"`
	Tables []string  `json:"tables"`
	Values [][]int64 `json:"values"`
}

type RenderStateResponse struct {
	State     string                `json:"state" example:"data"`
	Severity  string                `json:"severity,omitempty" example:"info"`
	Message   string                `json:"message,omitempty"`
	Namespace string                `json:"namespace,omitempty" example:"sales"`
	Tables    []string              `json:"tables,omitempty"`
	Selected  []string              `json:"selected,omitempty"`
	Records   []CountRecordResponse `json:"records,omitempty"`
	Matrix    *MatrixResponse       `json:"matrix,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"namespace is required"`
}

func toRecordsResponse(records []domain.CountRecord) []CountRecordResponse {
	out := make([]CountRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, CountRecordResponse{
			Table: r.Table,
			Date:  r.Date.Format(domain.DateLayout),
			Count: r.Count,
		})
	}
	return out
}

func toRenderStateResponse(s domain.RenderState) RenderStateResponse {
	resp := RenderStateResponse{
		State:     string(s.Kind),
		Severity:  string(s.Severity),
		Message:   s.Message,
		Namespace: s.Namespace,
		Tables:    s.Tables,
		Selected:  s.Selected,
	}
	if len(s.Records) > 0 {
		resp.Records = toRecordsResponse(s.Records)
	}
	if s.Matrix != nil {
		m := &MatrixResponse{
			Dates:  make([]string, 0, len(s.Matrix.Dates)),
			Tables: s.Matrix.Tables,
			Values: s.Matrix.Values,
		}
		for _, d := range s.Matrix.Dates {
			m.Dates = append(m.Dates, d.Format(domain.DateLayout))
		}
		resp.Matrix = m
	}
	return resp
}

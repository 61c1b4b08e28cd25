package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type BuildIndexRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

// Bind validates the payload. end_date is optional; a missing end date means
// a single-day build (the service defaults it to start).
func (req *BuildIndexRequest) Bind(r *http.Request) error {
	if req.StartDate == "" {
		return errors.New("start_date is required")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date: expected %s", dateLayout)
	}
	req.start = start

	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return fmt.Errorf("invalid end_date: expected %s", dateLayout)
		}
		req.end = end
	}

	return nil
}

type ExportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

func (req *ExportRequest) Bind(r *http.Request) error {
	if req.StartDate == "" {
		return errors.New("start_date is required")
	}
	if req.EndDate == "" {
		return errors.New("end_date is required")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date: expected %s", dateLayout)
	}
	req.start = start

	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date: expected %s", dateLayout)
	}
	req.end = end

	return nil
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: expected %s", name, dateLayout)
	}

	return date, nil
}

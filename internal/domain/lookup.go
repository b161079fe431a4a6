package domain

import (
	"time"

	"github.com/google/uuid"
)

// Endpoint names the API operation a lookup was recorded for
type Endpoint string

const (
	EndpointMetadata Endpoint = "metadata"
	EndpointDownload Endpoint = "download"
)

// Lookup is the journal record of one metadata or download request.
// It holds the outcome only, never the fetched metadata or media.
type Lookup struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	URL          string    `json:"url" gorm:"not null"`
	Platform     Platform  `json:"platform" gorm:"index"`
	Endpoint     Endpoint  `json:"endpoint" gorm:"not null"`
	Status       int       `json:"status" gorm:"not null;index"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	LatencyMS    int64     `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// NewLookup creates a journal record for a finished request
func NewLookup(url string, platform Platform, endpoint Endpoint, status int, latency time.Duration, err error) *Lookup {
	l := &Lookup{
		ID:        uuid.New().String(),
		URL:       url,
		Platform:  platform,
		Endpoint:  endpoint,
		Status:    status,
		LatencyMS: latency.Milliseconds(),
		CreatedAt: time.Now(),
	}
	if err != nil {
		l.ErrorKind = KindOf(err)
		l.ErrorMessage = err.Error()
	}
	return l
}

// Succeeded reports whether the request completed without an error response
func (l *Lookup) Succeeded() bool {
	return l.Status < 400
}

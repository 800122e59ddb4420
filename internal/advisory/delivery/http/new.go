package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"risk-advisor/internal/advisory"
	"risk-advisor/pkg/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler is the public interface for the advisory HTTP delivery layer.
type Handler interface {
	IndexPage(c *gin.Context)
	RiskPage(c *gin.Context)
	SentimentPage(c *gin.Context)
	AdvisorPage(c *gin.Context)

	Risk(c *gin.Context)
	Sentiment(c *gin.Context)
	Advisor(c *gin.Context)

	Summary(c *gin.Context)
	Reset(c *gin.Context)
}

type handler struct {
	l     log.Logger
	uc    advisory.UseCase
	pages *template.Template
}

// New creates a new HTTP handler for the advisory domain.
func New(l log.Logger, uc advisory.UseCase) Handler {
	return &handler{
		l:     l,
		uc:    uc,
		pages: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"photodeck/app"
	"photodeck/domain/deck"
	"photodeck/domain/photometry"
	"photodeck/internal"
	"photodeck/internal/api"
)

// Server is the presentation web server: it renders the deck shell and
// exposes the navigation, chart, and calculator endpoints the shell
// consumes.
type Server struct {
	router        *gin.Engine
	decks         *app.DeckService
	charts        *app.ChartService
	hub           *api.SSEHub
	templates     *template.Template
	embeddedFiles fs.FS
	log           *internal.Logger
	started       time.Time
}

// NewServer creates the server and registers all routes
func NewServer(embeddedFiles fs.FS, decks *app.DeckService, charts *app.ChartService, hub *api.SSEHub) (*Server, error) {
	s := &Server{
		router:        gin.Default(),
		decks:         decks,
		charts:        charts,
		hub:           hub,
		embeddedFiles: embeddedFiles,
		log:           internal.DefaultLogger,
		started:       time.Now(),
	}

	funcMap := template.FuncMap{
		"until": func(n int) []int {
			res := make([]int, n)
			for i := range res {
				res[i] = i
			}
			return res
		},
		"add": func(a, b int) int { return a + b },
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "ui/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.setupRoutes()
	return s, nil
}

// Handler exposes the underlying router for http.Server wiring
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(s.embeddedFiles, "ui/static")
	if err == nil {
		s.router.StaticFS("/static", http.FS(staticFS))
	} else {
		s.log.Warn("[UI] Embedded static assets unavailable: %v", err)
	}

	s.router.GET("/", s.handleDeck)

	apiGroup := s.router.Group("/api")
	{
		apiGroup.POST("/session", s.handleOpenSession)
		apiGroup.GET("/nav/:session", s.handleNavIndex)
		apiGroup.POST("/nav/:session/event", s.handleNavEvent)
		apiGroup.GET("/nav/:session/stream", s.hub.HandleSSE)
		apiGroup.GET("/charts", s.handleCharts)
		apiGroup.GET("/charts/:key", s.handleChart)
		apiGroup.POST("/aqy", s.handleAQY)
	}
}

// handleDeck renders the presentation shell
func (s *Server) handleDeck(c *gin.Context) {
	d := s.decks.Deck()
	data := gin.H{
		"Deck":       d,
		"SlideCount": d.Len(),
	}
	// Render to a buffer first so a template failure can still return
	// a 500 instead of a half-written 200.
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "deck.html", data); err != nil {
		s.log.Error("[UI] Failed to render deck: %v", err)
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleOpenSession registers a viewer and returns its session ID
func (s *Server) handleOpenSession(c *gin.Context) {
	id, err := s.decks.OpenSession()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "deck is empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":  id,
		"slide_count": s.decks.Deck().Len(),
		"index":       0,
	})
}

// handleNavIndex reports the session's current slide
func (s *Server) handleNavIndex(c *gin.Context) {
	idx, err := s.decks.Index(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": idx})
}

// handleNavEvent funnels one input event into the session's machine.
// Rejected events (throttled wheel gestures) are a normal outcome, not
// an error status.
func (s *Server) handleNavEvent(c *gin.Context) {
	var ev deck.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed navigation event"})
		return
	}

	tr, accepted, err := s.decks.Submit(c.Param("session"), ev)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	if !accepted {
		idx, _ := s.decks.Index(c.Param("session"))
		c.JSON(http.StatusOK, gin.H{"accepted": false, "index": idx})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": true, "index": tr.To, "from": tr.From})
}

// handleCharts returns every chart payload
func (s *Server) handleCharts(c *gin.Context) {
	c.JSON(http.StatusOK, s.charts.Charts(c.Request.Context()))
}

// handleChart returns one chart payload by key
func (s *Server) handleChart(c *gin.Context) {
	payload, ok := s.charts.Chart(c.Request.Context(), c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart"})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// handleAQY runs the calculator. Physically meaningless inputs come
// back as an explicit undefined shape so the shell never renders an
// Inf or NaN.
func (s *Server) handleAQY(c *gin.Context) {
	var in photometry.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed calculator input"})
		return
	}

	res, err := photometry.ComputeAQY(in)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"undefined": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"undefined": false,
		"result":    res,
		"display": gin.H{
			"aqy_percent":   strconv.FormatFloat(res.AQYPercent, 'f', 3, 64) + " %",
			"photon_energy": strconv.FormatFloat(res.PhotonEnergyJ, 'e', 3, 64) + " J",
			"photons_per_s": strconv.FormatFloat(res.PhotonsPerSecond, 'e', 3, 64),
			"total_photons": strconv.FormatFloat(res.TotalPhotons, 'e', 3, 64),
			"molecules":     strconv.FormatFloat(res.MoleculesDegraded, 'e', 3, 64),
		},
	})
}

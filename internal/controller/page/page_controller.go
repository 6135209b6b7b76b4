package page

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/config"
	"github.com/lshigami/mockinterview/web"
)

type pageData struct {
	Title        string
	Page         string
	Authed       bool
	MaxQuestions int
}

type pageRoute struct {
	path   string
	name   string
	title  string
	authed bool
}

// Pages authenticate client-side: the browser keeps the bearer token and calls the JSON API.
var pageRoutes = []pageRoute{
	{"/", "index", "Home", false},
	{"/signup", "signup", "Sign up", false},
	{"/login", "login", "Log in", false},
	{"/dashboard", "dashboard", "Dashboard", true},
	{"/start-interview", "start_interview", "New interview", true},
	{"/interview", "interview", "Interview", true},
	{"/result", "result", "Result", true},
	{"/recent-interviews", "recent_interviews", "Recent interviews", true},
	{"/jobs", "jobs", "Jobs", true},
	{"/ai-careers", "ai_careers", "AI careers", true},
	{"/cv-optimization", "cv_optimization", "CV optimization", true},
	{"/profile", "profile", "Profile", true},
	{"/support", "support", "Support", false},
	{"/billing", "billing", "Billing", true},
}

type PageController struct {
	maxQuestions int
}

func NewPageController(cfg *config.Config) *PageController {
	return &PageController{maxQuestions: cfg.Interview.MaxQuestions}
}

// RegisterRoutes installs the HTML templates, static assets and one GET route per page.
func (c *PageController) RegisterRoutes(router *gin.Engine) error {
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse page templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(web.Static()))

	for _, p := range pageRoutes {
		router.GET(p.path, c.render(p))
	}
	return nil
}

func (c *PageController) render(p pageRoute) gin.HandlerFunc {
	data := pageData{Title: p.title, Page: p.name, Authed: p.authed, MaxQuestions: c.maxQuestions}
	return func(ctx *gin.Context) {
		ctx.HTML(http.StatusOK, p.name+".html", data)
	}
}

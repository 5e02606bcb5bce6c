package routes

import (
	"net/http"

	"github.com/taskpilot/taskpilot/internal/app"
	"github.com/taskpilot/taskpilot/internal/handler"
	"github.com/taskpilot/taskpilot/internal/middleware"
)

func Setup(app *app.App) http.Handler {
	// Handlers
	todo := handler.NewTodoHandler(app.TodoService)
	tag := handler.NewTagHandler(app.TagService)
	upload := handler.NewUploadHandler(app.FileService)
	recommend := handler.NewRecommendHandler(app.RecommendService)
	health := handler.NewHealthHandler()

	auth := middleware.RequireAuth(app.Verifier)
	recommendLimiter := middleware.RateLimitRecommend(app.Cfg.RecommendLimit, app.Cfg.RecommendWindow)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Todos
	mux.HandleFunc("POST /todos", auth(todo.Create))
	mux.HandleFunc("GET /todos", auth(todo.List))
	mux.HandleFunc("GET /todos/search", auth(todo.Search))
	mux.HandleFunc("GET /todos/filter", auth(todo.Filter))
	mux.HandleFunc("GET /todos/{id}", auth(todo.Get))
	mux.HandleFunc("PATCH /todos/{id}", auth(todo.Update))
	mux.HandleFunc("DELETE /todos/{id}", auth(todo.Delete))

	// Tags
	mux.HandleFunc("POST /tags", auth(tag.Create))
	mux.HandleFunc("GET /tags", auth(tag.List))
	mux.HandleFunc("DELETE /tags/{id}", auth(tag.Delete))

	// Uploads
	mux.HandleFunc("POST /upload/file", auth(upload.UploadFile))
	mux.HandleFunc("POST /upload/image", auth(upload.UploadImage))

	// Asset passthrough, no auth: the opaque key is the capability
	mux.HandleFunc("GET /asset/{id}", upload.Asset)

	// AI recommendation (rate limited per caller)
	mux.HandleFunc("POST /recommend", auth(recommendLimiter(recommend.Recommend)))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
	)
}

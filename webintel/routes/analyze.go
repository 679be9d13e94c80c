package routes

import (
	"net/http"

	"webintel/webintel/config"
	"webintel/webintel/controllers"
	"webintel/webintel/middlewares"
	"webintel/webintel/utils/types"

	"github.com/go-chi/chi/v5"
)

const DegradedHeader = "X-Analysis-Degraded"

func AnalyzeRoutes(ctrl *controllers.AnalyzeController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.APIKeyMiddleware(cfg))

		gr.Post("/", handleJSON(func(w http.ResponseWriter, r *http.Request) (any, error) {
			var req types.AnalyzeRequest
			if err := decodeBody(r, &req); err != nil {
				return nil, err
			}
			details, err := ctrl.Analyze(r.Context(), req.URL)
			if err != nil {
				return nil, err
			}
			if details.IsDegraded() {
				w.Header().Set(DegradedHeader, "true")
			}
			return details, nil
		}))

		gr.Post("/question", handleJSON(func(w http.ResponseWriter, r *http.Request) (any, error) {
			var req types.QuestionRequest
			if err := decodeBody(r, &req); err != nil {
				return nil, err
			}
			return ctrl.Answer(r.Context(), req.Question, req.URL)
		}))

		gr.Post("/direct-question", handleJSON(func(w http.ResponseWriter, r *http.Request) (any, error) {
			var req types.DirectQuestionRequest
			if err := decodeBody(r, &req); err != nil {
				return nil, err
			}
			return ctrl.DirectQuestion(r.Context(), req.Question, req.Temperature)
		}))
	})
	return r
}

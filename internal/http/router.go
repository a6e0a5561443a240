package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// RouterConfig agrupa los parametros del router que no son handlers.
type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
}

// NewRouter configura el router de Gin con middlewares y una ruta por etapa del pipeline.
func NewRouter(
	logger *zap.Logger,
	cfg RouterConfig,
	userH *UserHandler,
	quizH *QuizHandler,
	profileH *ProfileHandler,
	careerH *CareerHandler,
	skillH *SkillHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		otelgin.Middleware(cfg.ServiceName),
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		corsMiddleware(cfg.AllowedOrigins),
		jsonContentTypeMiddleware(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	users.POST("", userH.CreateUser)
	users.GET("/:userId", userH.GetUser)

	quiz := r.Group("/quiz")
	quiz.POST("/start", quizH.Start)
	quiz.POST("/advance", quizH.Advance)
	quiz.GET("/:userId", quizH.GetTranscript)

	r.POST("/profile", profileH.Synthesize)
	r.GET("/profile/:userId", profileH.GetProfile)

	r.POST("/career-paths", careerH.Generate)
	r.GET("/career-paths/:userId", careerH.GetAdvice)

	r.POST("/skill-gap", skillH.Analyze)
	r.GET("/skill-gap/:userId", skillH.List)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware habilita la capa de presentacion web; "*" abre todos los origenes.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Traceparent", "Tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

package server

import (
	"log"
	"os"
	"strings"
	"time"

	"anoa.com/lesprivat/internal/handler"
	"anoa.com/lesprivat/internal/middleware"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/internal/service"
	"anoa.com/lesprivat/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	advertRepo := repository.NewAdvertRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	accessRepo := repository.NewAccessRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage unavailable, avatar upload disabled: %v", err)
		imageStorage = nil
	}

	// Meilisearch is optional; without it the subject list search falls back
	// to the database query.
	var meiliClient meilisearch.ServiceManager
	if meiliHost := os.Getenv("MEILISEARCH_HOST"); meiliHost != "" {
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient = meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	}
	searchSvc := service.NewSearchService(meiliClient)

	authSvc := service.NewAuthService(userRepo)
	profileSvc := service.NewProfileService(userRepo, imageStorage)
	authHandler := handler.NewAuthHandler(authSvc, profileSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)

	subjectSvc := service.NewSubjectService(subjectRepo, advertRepo, reviewRepo, searchSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)

	advertSvc := service.NewAdvertService(advertRepo, subjectRepo, reviewRepo, searchSvc)
	advertHandler := handler.NewAdvertHandler(advertSvc)

	applicationSvc := service.NewApplicationService(applicationRepo, advertRepo)
	applicationHandler := handler.NewApplicationHandler(applicationSvc)

	reviewSvc := service.NewReviewService(reviewRepo, advertRepo, applicationRepo)
	reviewHandler := handler.NewReviewHandler(reviewSvc)

	accessSvc := service.NewAccessService(accessRepo)
	chatSvc := service.NewChatService(messageRepo, userRepo, accessSvc, redisClient)
	chatHandler := handler.NewChatHandler(chatSvc, redisClient)

	complaintSvc := service.NewComplaintService(complaintRepo, advertRepo)
	complaintHandler := handler.NewComplaintHandler(complaintSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (tidak perlu auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
	api.GET("/subjects", subjectHandler.GetAllSubjects)
	api.GET("/subjects/:id", subjectHandler.GetSubject)
	api.GET("/adverts", advertHandler.GetActiveAdverts)
	api.GET("/adverts/:id", advertHandler.GetAdvert)
	api.GET("/adverts/:id/reviews", reviewHandler.GetAdvertReviews)
	api.GET("/reviews/:id", reviewHandler.GetReview)
	api.GET("/profiles/:user_id", profileHandler.GetProfile)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		protected.POST("/subjects", subjectHandler.CreateSubject)
		protected.POST("/subjects/:id/subsubjects", subjectHandler.LinkSubSubject)

		protected.POST("/adverts", advertHandler.CreateAdvert)
		protected.PUT("/adverts/:id", advertHandler.UpdateAdvert)

		protected.POST("/adverts/:id/applications", applicationHandler.CreateApplication)
		protected.GET("/applications", applicationHandler.GetMyApplications)
		protected.GET("/applications/:id", applicationHandler.GetApplication)
		protected.PUT("/applications/:id/status", applicationHandler.UpdateStatus)

		protected.POST("/adverts/:id/reviews", reviewHandler.CreateReview)
		protected.PUT("/reviews/:id", reviewHandler.UpdateReview)

		protected.POST("/adverts/:id/complaints", complaintHandler.CreateComplaint)
		protected.GET("/adverts/:id/complaints", complaintHandler.GetAdvertComplaints)

		protected.GET("/chats", chatHandler.ListCounterparts)
		protected.GET("/chats/:user_id", chatHandler.GetConversation)
		protected.POST("/chats/:user_id", chatHandler.SendMessage)
		protected.GET("/chats/:user_id/ws", chatHandler.StreamConversation)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

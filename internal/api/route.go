package api

import (
	"Amoria/internal/api/middleware"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.GET("/:id/simple", group.UserHandler.GetUserSimpleInfo)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetMyInfo)
			}
		}

		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WSHandler.Connect)
			authGroup := imGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/messages", group.IMHandler.SendMessage)
				authGroup.POST("/messages/hi", group.IMHandler.SendHi)
				authGroup.POST("/messages/gift", group.IMHandler.SendGift)
				authGroup.GET("/history", group.IMHandler.GetChatHistory)
				authGroup.GET("/list", group.IMHandler.GetConversationList)
				authGroup.POST("/read", group.IMHandler.MarkAsRead)
			}
		}

		walletGroup := apiGroup.Group("/wallet")
		walletGroup.Use(middleware.AuthMiddleware())
		{
			walletGroup.GET("/balance", group.WalletHandler.GetBalance)
			walletGroup.GET("/transactions", group.WalletHandler.ListTransactions)

			adminGroup := walletGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.GET("/transactions/search", group.WalletHandler.SearchTransactions)
			}
		}

		rewardGroup := apiGroup.Group("/rewards")
		rewardGroup.Use(middleware.AuthMiddleware())
		{
			rewardGroup.POST("/daily/claim", group.RewardHandler.ClaimDailyReward)
			rewardGroup.GET("/daily/status", group.RewardHandler.GetRewardStatus)
		}

		giftGroup := apiGroup.Group("/gifts")
		giftGroup.Use(middleware.AuthMiddleware())
		{
			giftGroup.GET("", group.GiftHandler.ListGifts)
		}

		blockGroup := apiGroup.Group("/blocks")
		blockGroup.Use(middleware.AuthMiddleware())
		{
			blockGroup.POST("", group.BlockHandler.Block)
			blockGroup.DELETE("", group.BlockHandler.Unblock)
		}
	}

	return r
}

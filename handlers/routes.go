package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Harsh-cyber005/paisafy-server/middleware"
)

// Register mounts every route under /api. Signup, login and the OTP flow
// are public; everything else sits behind the auth middleware.
func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api")
	protected := middleware.Auth(h.cfg.JWTSecret)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/send-otp", h.SendOTP)
		auth.POST("/verify-otp", h.VerifyOTP)
		auth.GET("/init-details", protected, h.InitDetails)
	}

	user := api.Group("/user", protected)
	{
		user.GET("/profile", h.GetProfile)
		user.PUT("/profile", h.UpdateProfile)
		user.POST("/income-sources", h.AddIncomeSource)
		user.PUT("/income-sources/:sourceId", h.UpdateIncomeSource)
		user.DELETE("/income-sources/:sourceId", h.DeleteIncomeSource)
		user.POST("/recurring-expenses", h.AddRecurringExpense)
		user.PUT("/recurring-expenses/:expenseId", h.UpdateRecurringExpense)
		user.DELETE("/recurring-expenses/:expenseId", h.DeleteRecurringExpense)
	}

	transactions := api.Group("/transactions", protected)
	{
		transactions.POST("", h.CreateTransaction)
		transactions.GET("", h.ListTransactions)
		transactions.GET("/summary", h.TransactionSummary)
		transactions.GET("/trend", h.SpendingTrend)
		transactions.GET("/:transactionId", h.GetTransaction)
		transactions.PUT("/:transactionId", h.UpdateTransaction)
		transactions.DELETE("/:transactionId", h.DeleteTransaction)
	}

	jars := api.Group("/jars", protected)
	{
		jars.POST("", h.CreateJar)
		jars.GET("", h.ListJars)
		jars.PUT("/:jarId", h.UpdateJar)
		jars.DELETE("/:jarId", h.DeleteJar)
		jars.POST("/:jarId/deposit", h.DepositToJar)
		jars.POST("/:jarId/withdraw", h.WithdrawFromJar)
	}

	goals := api.Group("/goals", protected)
	{
		goals.POST("", h.CreateGoal)
		goals.GET("", h.ListGoals)
		goals.GET("/:goalId", h.GetGoal)
		goals.PUT("/:goalId", h.UpdateGoal)
		goals.DELETE("/:goalId", h.DeleteGoal)
		goals.POST("/:goalId/contribute", h.ContributeToGoal)
	}

	charges := api.Group("/charges", protected)
	{
		charges.POST("", h.CreateCharge)
		charges.GET("", h.ListCharges)
		charges.GET("/dues", h.ListDues)
		charges.PUT("/:chargeId", h.UpdateCharge)
		charges.DELETE("/:chargeId", h.DeleteCharge)
		charges.PATCH("/:chargeId/mark-paid", h.MarkChargePaid)
		charges.PATCH("/:chargeId/mark-not-paid", h.MarkChargeNotPaid)
	}

	api.POST("/onboarding", protected, h.SubmitOnboarding)
	api.GET("/insights/all", protected, h.GetInsights)
}

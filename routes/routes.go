package routes

import (
	"library-api/app"
	"library-api/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	controllers.RegisterOn(r, controllers.GetSrv(a))
}

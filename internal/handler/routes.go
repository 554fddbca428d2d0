package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API below api
func RegisterRoutes(api *gin.RouterGroup, properties *PropertyHandler, embeddings *EmbeddingHandler, chat *ChatHandler) {
	props := api.Group("/properties")
	{
		props.GET("", properties.List)
		props.GET("/:id", properties.Get)
		props.GET("/search/:query", properties.Search)
		props.GET("/location/:city", properties.ByLocation)
		props.POST("/embeddings", embeddings.BatchUpdate)
	}

	api.POST("/chat", chat.Send)
	api.GET("/chat/:sessionId", chat.History)
	api.GET("/sessions/:sessionId", chat.Session)
}

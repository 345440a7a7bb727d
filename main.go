package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sumitkumargeu/qrstudio/internal/handlers"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// API routes
	h := handlers.New()
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.GET("/favicon", h.FaviconHandler)
		api.GET("/logos/presets", h.LogoPresetsHandler)
		api.POST("/logo", h.LogoUploadHandler)
	}

	r.GET("/sitemap.xml", h.SitemapXML)

	addr := getAddr()
	log.Printf("qrstudio listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func getAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

package main

import (
	"net/http"

	"swout/catalog"
	"swout/outbound"
)

func SetupRoutes(mux *http.ServeMux, cat *catalog.Catalog) {
	mux.HandleFunc("/api/outbound/upload", outbound.UploadOutboundHandler(cat))
	mux.HandleFunc("/api/outbound/preview", outbound.PreviewOutboundHandler(cat))
}

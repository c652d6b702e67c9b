package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// auth
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginHandler)
	router.HandlerFunc(http.MethodPost, "/api/logout", app.logoutHandler)
	router.HandlerFunc(http.MethodGet, "/api/auth/status", app.authStatusHandler)

	// posts
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireAdmin(app.createBlogHandler))
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.requireAdmin(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.requireAdmin(app.deleteBlogHandler))

	// about page
	router.HandlerFunc(http.MethodGet, "/api/about", app.getAboutHandler)
	router.HandlerFunc(http.MethodPut, "/api/about", app.requireAdmin(app.updateAboutHandler))

	// newsletter
	router.HandlerFunc(http.MethodPost, "/api/newsletter/subscribe", app.subscribeHandler)
	router.HandlerFunc(http.MethodGet, "/api/newsletter/subscribers", app.requireAdmin(app.listSubscribersHandler))
	router.HandlerFunc(http.MethodDelete, "/api/newsletter/subscribers/:id", app.requireAdmin(app.deleteSubscriberHandler))

	// images
	router.HandlerFunc(http.MethodPost, "/api/upload-image", app.requireAdmin(app.uploadImageHandler))
	if app.config.UploadBackend != "minio" {
		router.ServeFiles("/uploads/*filepath", http.Dir(app.config.UploadDir))
	}

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}

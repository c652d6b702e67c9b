package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/velvetkeys/inkpost/internal/authservice"
	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/mediaservice"
	"github.com/velvetkeys/inkpost/internal/postservice"
	"github.com/velvetkeys/inkpost/internal/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	credential, err := app.gate.Login(input.Username, input.Password, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrTooManyAttempts):
			app.tooManyLoginAttemptsErrorResponse(w, r)
		case errors.Is(err, authservice.ErrInvalidCredentials):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.setSessionCookie(w, credential)

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "username": input.Username}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		app.gate.Logout(cookie.Value)
	}

	app.clearSessionCookie(w)

	err := app.writeJSON(w, http.StatusOK, envelope{"success": true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) authStatusHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.getIdentityContext(r)

	env := envelope{"authenticated": false}
	if identity != nil {
		env["authenticated"] = true
		env["username"] = identity.Username
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) setSessionCookie(w http.ResponseWriter, credential string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(authservice.CredentialTTL / time.Second),
		HttpOnly: true,
		Secure:   app.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *application) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   app.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.List(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	view, err := app.postService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": view}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	input, err := app.readPostForm(w, r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"blog": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateBlogRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input updateBlogRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.Update(r.Context(), &postservice.UpdatePostRequest{
		ID:         id,
		Title:      input.Title,
		Author:     input.Author,
		Content:    input.Content,
		Excerpt:    input.Excerpt,
		CoverImage: input.CoverImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getAboutHandler(w http.ResponseWriter, r *http.Request) {
	view, err := app.postService.GetAbout(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"about": view}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateAboutRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (app *application) updateAboutHandler(w http.ResponseWriter, r *http.Request) {
	var input updateAboutRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	about, err := app.postService.UpdateAbout(r.Context(), input.Title, input.Content)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"about": about}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var input subscribeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	sub, err := app.newsletterService.Subscribe(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			app.conflictErrorResponse(w, r, "this email address is already subscribed")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"subscriber": sub}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := app.newsletterService.List(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"subscribers": subs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteSubscriberHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.newsletterService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "subscriber deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, mediaservice.MaxUploadBytes)

	err := r.ParseMultipartForm(mediaservice.MaxUploadBytes)
	if err != nil {
		app.badRequestErrorResponse(w, r, errors.New("could not parse multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.badRequestErrorResponse(w, r, errors.New("an image file must be provided"))
		return
	}
	defer file.Close()

	result, err := app.mediaService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, mediaservice.ErrUnsupportedType):
			app.badRequestErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"image": result}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

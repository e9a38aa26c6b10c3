package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/apnaparivar/familytree-backend/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/health", h.health)

	router.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			// routes without authorization
			r.Post("/superadmin/login", h.superAdminLogin)
			r.Post("/admin/register", h.adminRegister)
			r.Get("/admin/status/{requestID}", h.requestStatus)
			r.Post("/admin/login", h.adminLogin)
			r.Post("/member/login", h.memberLogin)
			r.Post("/send-magic-link", h.sendMagicLink)
			r.Post("/verify-magic-link", h.verifyMagicLink)
			r.Post("/refresh-token", h.refreshToken)
			r.Post("/verify-token", h.verifyToken)
			r.Post("/logout", h.logout)
			r.Get("/me", h.currentUser)

			r.Group(func(protected chi.Router) {
				protected.Use(h.auth)
				protected.With(h.requireRole(models.RoleFamilyAdmin)).
					Post("/family-password", h.familyPassword)

				protected.Group(func(sa chi.Router) {
					sa.Use(h.requireRole(models.RoleSuperAdmin))
					sa.Get("/admin/requests/pending", h.pendingRequests)
					sa.Post("/admin/request/approve", h.approveRequest)
					sa.Post("/admin/request/reject", h.rejectRequest)
				})
			})
		})

		api.Group(func(protected chi.Router) {
			protected.Use(h.auth)

			protected.Route("/users", func(r chi.Router) {
				r.With(h.requireRole(models.RoleSuperAdmin)).Post("/", h.createUser)
				r.Get("/", h.listFamilyUsers)
				r.Get("/{userID}", h.getUser)
				r.Put("/{userID}", h.updateUser)
				r.With(h.requireRole(models.RoleSuperAdmin)).Delete("/{userID}", h.deleteUser)
			})

			protected.Route("/families", func(r chi.Router) {
				r.With(h.requireRole(models.RoleSuperAdmin)).Post("/", h.createFamily)
				r.With(h.requireRole(models.RoleSuperAdmin)).Get("/", h.listFamilies)
				r.Get("/{familyID}", h.getFamily)
				r.Put("/{familyID}", h.updateFamily)
				r.With(h.requireRole(models.RoleSuperAdmin)).Delete("/{familyID}", h.deleteFamily)
			})

			protected.Route("/family-members", func(r chi.Router) {
				r.Post("/", h.createFamilyMember)
				r.Post("/bulk/create", h.bulkCreateFamilyMembers)
				r.Get("/search/", h.searchFamilyMembers)
				r.Get("/family/{familyID}", h.listFamilyMembers)
				r.Get("/{memberID}", h.getFamilyMember)
				r.Put("/{memberID}", h.updateFamilyMember)
				r.Delete("/{memberID}", h.deleteFamilyMember)
			})
		})
	})

	return router
}

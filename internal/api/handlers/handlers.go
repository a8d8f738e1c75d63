package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Handlers contains all HTTP handlers. A handler is nil when its service is
// disabled.
type Handlers struct {
	Member   *MemberHandler
	User     *UserHandler
	Tenant   *TenantHandler
	Relation *RelationHandler
	Image    *ImageHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	RegisterValidators()

	h := &Handlers{}
	if services.Member != nil {
		h.Member = NewMemberHandler(services.Member)
		h.User = NewUserHandler(services.Member)
	}
	if services.Tenant != nil {
		h.Tenant = NewTenantHandler(services.Tenant)
	}
	if services.Relation != nil {
		h.Relation = NewRelationHandler(services.Relation)
	}
	if services.Image != nil {
		h.Image = NewImageHandler(services.Image)
	}
	return h
}

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags and reports fields by
// their JSON (or query) names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return ""
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
			return service.ValidUserID(fl.Field().String())
		})
		_ = v.RegisterValidation("imageid", func(fl validator.FieldLevel) bool {
			_, ok := service.ParseImageID(fl.Field().String())
			return ok
		})
	})
}

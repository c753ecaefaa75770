package catalog

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// report violations under their JSON names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			_, ok := CanonicalGenre(fl.Field().String())
			return ok
		})
		validate = v
	})
	return validate
}

func ValidateAlbumInput(in AlbumInput) error   { return check(in) }
func ValidateAlbumPatch(p AlbumPatch) error    { return check(p) }
func ValidateArtistInput(in ArtistInput) error { return check(in) }
func ValidateArtistPatch(p ArtistPatch) error  { return check(p) }

// check runs every rule on v and reports all failing fields at once.
func check(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return Invalid(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "required":
		return "required"
	case "gte":
		return "must be >= " + fe.Param()
	case "genre":
		return "must be one of: " + strings.Join(Genres, ", ")
	default:
		return "is invalid"
	}
}

package app

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"menu_agent/internal/domain"
	"menu_agent/internal/query"
)

const (
	DefaultRecommendLimit = 3
	MaxRecommendLimit     = 10
)

// RecommendParams is the validated input of a recommendation query.
type RecommendParams struct {
	Criteria        query.Criteria
	Limit           int
	PreferSignature bool
}

// listInput carries typed but not yet range-checked query parameters.
type listInput struct {
	RestaurantID *int64   `param:"restaurant_id" validate:"omitempty,gt=0"`
	Q            string   `param:"q" validate:"max=200"`
	Region       string   `param:"region" validate:"max=64"`
	Flavor       string   `param:"flavor" validate:"max=64"`
	IsSignature  *bool    `param:"is_signature"`
	MaxPrice     *float64 `param:"max_price" validate:"omitempty,gte=0,lte=1000000"`
}

type recommendInput struct {
	listInput
	Limit           int  `param:"limit" validate:"min=1,max=10"`
	PreferSignature bool `param:"prefer_signature"`
}

var (
	listKeys      = []string{"restaurant_id", "q", "region", "flavor", "is_signature", "max_price"}
	recommendKeys = append(append([]string{}, listKeys...), "limit", "prefer_signature")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator. Field names in errors come from
// the param (query) or json (body) tag.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"param", "json"} {
				if name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
	return validate
}

// validateStruct runs the struct rules and merges failures into ve.
func validateStruct(s any, ve *domain.ValidationError) {
	err := getValidator().Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ve.Add("request", err.Error())
		return
	}
	for _, fe := range verrs {
		ve.Add(fe.Field(), ruleMessage(fe))
	}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "must have at least " + fe.Param() + " characters"
		}
		return "must be >= " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		if fe.Kind() == reflect.Slice {
			return "must have at most " + fe.Param() + " entries"
		}
		return "must be <= " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "alpha":
		return "must contain letters only"
	}
	return "failed " + fe.Tag() + " check"
}

// ParseListParams turns raw query parameters into validated criteria.
func ParseListParams(v url.Values) (query.Criteria, error) {
	ve := &domain.ValidationError{}
	rejectUnknown(v, listKeys, ve)
	in := parseList(v, ve)
	if len(ve.Fields) == 0 {
		validateStruct(&in, ve)
	}
	var c query.Criteria
	if len(ve.Fields) == 0 {
		c = in.criteria(ve)
	}
	if err := ve.OrNil(); err != nil {
		return query.Criteria{}, err
	}
	return c, nil
}

// ParseRecommendParams is ParseListParams plus limit (default 3, 1..10) and
// prefer_signature (default true).
func ParseRecommendParams(v url.Values) (RecommendParams, error) {
	ve := &domain.ValidationError{}
	rejectUnknown(v, recommendKeys, ve)
	in := recommendInput{listInput: parseList(v, ve), Limit: DefaultRecommendLimit, PreferSignature: true}
	if s, ok := single(v, "limit", ve); ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			ve.Add("limit", "must be an integer")
		} else {
			in.Limit = n
		}
	}
	if b, ok := parseBool(v, "prefer_signature", ve); ok {
		in.PreferSignature = b
	}
	if len(ve.Fields) == 0 {
		validateStruct(&in, ve)
	}
	var c query.Criteria
	if len(ve.Fields) == 0 {
		c = in.criteria(ve)
	}
	if err := ve.OrNil(); err != nil {
		return RecommendParams{}, err
	}
	return RecommendParams{Criteria: c, Limit: in.Limit, PreferSignature: in.PreferSignature}, nil
}

func rejectUnknown(v url.Values, allowed []string, ve *domain.ValidationError) {
	var unknown []string
	for k := range v {
		if !contains(allowed, k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		ve.Add(k, "unknown parameter")
	}
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// single returns the one value of key. Absent and blank are "not given".
func single(v url.Values, key string, ve *domain.ValidationError) (string, bool) {
	vals, ok := v[key]
	if !ok {
		return "", false
	}
	if len(vals) > 1 {
		ve.Add(key, "must be given once")
		return "", false
	}
	s := strings.TrimSpace(vals[0])
	return s, s != ""
}

// text is single without trimming; a blank value still counts as not given.
func text(v url.Values, key string, ve *domain.ValidationError) string {
	vals, ok := v[key]
	if !ok {
		return ""
	}
	if len(vals) > 1 {
		ve.Add(key, "must be given once")
		return ""
	}
	if strings.TrimSpace(vals[0]) == "" {
		return ""
	}
	return vals[0]
}

func parseBool(v url.Values, key string, ve *domain.ValidationError) (bool, bool) {
	s, ok := single(v, key, ve)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		ve.Add(key, "must be true or false")
		return false, false
	}
	return b, true
}

func parseList(v url.Values, ve *domain.ValidationError) listInput {
	var in listInput
	if s, ok := single(v, "restaurant_id", ve); ok {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			ve.Add("restaurant_id", "must be an integer id")
		} else {
			in.RestaurantID = &id
		}
	}
	in.Q = text(v, "q", ve)
	in.Region, _ = single(v, "region", ve)
	in.Flavor, _ = single(v, "flavor", ve)
	if b, ok := parseBool(v, "is_signature", ve); ok {
		in.IsSignature = &b
	}
	if s, ok := single(v, "max_price", ve); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			ve.Add("max_price", "must be a number")
		} else {
			in.MaxPrice = &f
		}
	}
	return in
}

func (in listInput) criteria(ve *domain.ValidationError) query.Criteria {
	c := query.Criteria{
		RestaurantID: in.RestaurantID,
		Q:            in.Q,
		Region:       in.Region,
		Flavor:       in.Flavor,
		IsSignature:  in.IsSignature,
	}
	if in.MaxPrice != nil {
		p, err := domain.PriceFromFloat(*in.MaxPrice)
		if err != nil {
			ve.Add("max_price", err.Error())
			return c
		}
		c.MaxPrice = &p
	}
	return c
}

// RestaurantInput is the create-restaurant payload.
type RestaurantInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	City        string `json:"city" validate:"max=255"`
	CuisineHint string `json:"cuisine_hint" validate:"max=255"`
}

// ItemInput is the create-item payload.
type ItemInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=4000"`
	Price       *float64 `json:"price" validate:"required,gte=0,lte=1000000"`
	Currency    string   `json:"currency" validate:"omitempty,len=3,alpha"`
	IsSignature bool     `json:"is_signature"`
	RegionTags  []string `json:"region_tags" validate:"max=32,dive,max=64"`
	FlavorTags  []string `json:"flavor_tags" validate:"max=32,dive,max=64"`
}

func (in *RestaurantInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.CuisineHint = strings.TrimSpace(in.CuisineHint)
}

func (in *ItemInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
}

// Validate checks the payload; the error is a *domain.ValidationError.
func (in RestaurantInput) Validate() error {
	ve := &domain.ValidationError{}
	validateStruct(&in, ve)
	return ve.OrNil()
}

func (in ItemInput) Validate() error {
	ve := &domain.ValidationError{}
	validateStruct(&in, ve)
	if in.Price != nil && (math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0)) {
		ve.Add("price", "must be a finite number")
	}
	return ve.OrNil()
}

// String renders RecommendParams for logs.
func (p RecommendParams) String() string {
	return fmt.Sprintf("limit=%d prefer_signature=%t", p.Limit, p.PreferSignature)
}

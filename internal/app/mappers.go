package app

import (
	"strconv"
	"strings"

	"menu_agent/internal/domain"
)

/********** alias registries (single source of truth) **********/

var restaurantAliases = map[string][]string{
	"id":           {"id", "restaurant_id", "restaurantId"},
	"name":         {"name", "restaurant_name", "title", "display_name"},
	"city":         {"city", "location.city", "address.city", "town"},
	"cuisine_hint": {"cuisine_hint", "cuisine", "cuisineHint", "category", "style"},
}

var itemAliases = map[string][]string{
	"name":         {"name", "title", "dish", "item_name", "dish_name"},
	"description":  {"description", "desc", "details", "summary"},
	"price":        {"price", "price.amount", "amount", "cost"},
	"price_cents":  {"price_cents", "priceCents", "price.cents"},
	"currency":     {"currency", "price.currency", "currency_code"},
	"is_signature": {"is_signature", "signature", "isSignature", "featured", "specialty"},
	"region_tags":  {"region_tags", "regions", "region", "regionTags", "cuisine_tags"},
	"flavor_tags":  {"flavor_tags", "flavors", "flavor", "flavorTags", "taste"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstAlias: first non-empty string for a named alias set.
func firstAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "12,50").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

// firstBoolFlexible: bool, 0/1 or "yes"/"true"-style strings.
func firstBoolFlexible(m map[string]any, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "1", "t", "true", "y", "yes":
				return true
			case "0", "f", "false", "n", "no":
				return false
			}
		}
	}
	return false
}

// firstTags: accept a csv string ("spicy, savory") or []any with strings or {name}.
func firstTags(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		var out []string
		switch v := lookupAny(m, k).(type) {
		case string:
			for _, t := range strings.Split(v, ",") {
				if t = strings.TrimSpace(t); t != "" {
					out = append(out, t)
				}
			}
		case []any:
			for _, it := range v {
				switch t := it.(type) {
				case string:
					if t = strings.TrimSpace(t); t != "" {
						out = append(out, t)
					}
				case map[string]any:
					if n := lookupStr(t, "name"); n != "" {
						out = append(out, n)
					}
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

/********** payload mappers **********/

// mapRestaurant returns the upstream id (0 when absent) and the local input.
func mapRestaurant(p map[string]any) (int64, RestaurantInput) {
	var upstreamID int64
	if id := firstInt64Flexible(p, restaurantAliases["id"]...); id != nil {
		upstreamID = *id
	}
	return upstreamID, RestaurantInput{
		Name:        firstAlias(p, restaurantAliases, "name"),
		City:        firstAlias(p, restaurantAliases, "city"),
		CuisineHint: firstAlias(p, restaurantAliases, "cuisine_hint"),
	}
}

// mapItem accepts price as a decimal (number or "12,50") or integer cents.
func mapItem(p map[string]any) ItemInput {
	in := ItemInput{
		Name:        firstAlias(p, itemAliases, "name"),
		Description: firstAlias(p, itemAliases, "description"),
		Currency:    firstAlias(p, itemAliases, "currency"),
		IsSignature: firstBoolFlexible(p, itemAliases["is_signature"]...),
		RegionTags:  firstTags(p, itemAliases["region_tags"]...),
		FlavorTags:  firstTags(p, itemAliases["flavor_tags"]...),
	}
	if f := getFloatFlexible(p, itemAliases["price"]...); f != nil {
		in.Price = f
	} else if c := firstInt64Flexible(p, itemAliases["price_cents"]...); c != nil {
		f := domain.Price(*c).Float()
		in.Price = &f
	}
	return in
}

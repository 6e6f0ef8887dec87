// internal/query/builder.go
package query

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FieldID          = "_id"
	FieldName        = "name"
	FieldBrand       = "brand"
	FieldCategory    = "category"
	FieldSubCategory = "subCategory"
	FieldTags        = "tags"
	FieldIsActive    = "isActive"
	FieldSellerEmail = "seller_email"
	FieldEmail       = "email"
	FieldAIStyle     = "aiMetadata.style"
	FieldAIConcern   = "aiMetadata.concern"
)

// Result limits used by the search and chat paths.
const (
	SearchLimit       = 50
	ChatFallbackLimit = 8
	ChatMatchLimit    = 5

	chatMinQueryLength = 3
)

// DefaultGenericKeywords trigger the chat inventory fallback.
var DefaultGenericKeywords = []string{
	"what", "have", "items", "products", "list", "inventory", "show", "all", "beauty",
}

var (
	searchFields = []string{FieldName, FieldBrand, FieldCategory, FieldTags}
	chatFields   = []string{
		FieldName, FieldBrand, FieldCategory, FieldTags,
		FieldSubCategory, FieldAIStyle, FieldAIConcern,
	}
)

// ParseID parses a hex object identifier. Malformed input reports false
// and is never an error: callers treat it as "not found".
func ParseID(s string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func ActiveOnly() Filter {
	return Eq{Field: FieldIsActive, Value: true}
}

func ByID(id primitive.ObjectID) Filter {
	return Eq{Field: FieldID, Value: id}
}

func ByEmail(email string) Filter {
	return Eq{Field: FieldEmail, Value: email}
}

// ListFilter selects active products, optionally in one category (full,
// case-insensitive match) and optionally excluding one identifier. An
// exclude value that does not parse is ignored.
func ListFilter(category, excludeID string) Filter {
	f := And{ActiveOnly()}
	if category = strings.TrimSpace(category); category != "" {
		f = append(f, Regex{Field: FieldCategory, Pattern: "^" + regexp.QuoteMeta(category) + "$"})
	}
	if excludeID != "" {
		if id, ok := ParseID(excludeID); ok {
			f = append(f, Ne{Field: FieldID, Value: id})
		}
	}
	return f
}

// SearchFilter selects active products whose name, brand, category or any
// tag contains q, case-insensitively.
func SearchFilter(q string) Filter {
	return And{ActiveOnly(), containsAny(q, searchFields)}
}

// ChatFilter picks the inventory slice handed to the assistant. Short
// messages and messages containing a generic keyword get the first active
// products unfiltered; anything else is matched across the descriptive
// fields including aiMetadata.
func ChatFilter(message string, genericKeywords []string) (Filter, int64) {
	q := strings.ToLower(strings.TrimSpace(message))
	if IsGenericChatQuery(q, genericKeywords) {
		return ActiveOnly(), ChatFallbackLimit
	}
	return And{ActiveOnly(), containsAny(q, chatFields)}, ChatMatchLimit
}

// IsGenericChatQuery reports whether q should bypass text matching. q is
// expected lower-cased.
func IsGenericChatQuery(q string, genericKeywords []string) bool {
	if utf8.RuneCountInString(q) < chatMinQueryLength {
		return true
	}
	for _, kw := range genericKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// OwnerFilter selects every product owned by sellerEmail.
func OwnerFilter(sellerEmail string) Filter {
	return Eq{Field: FieldSellerEmail, Value: sellerEmail}
}

// OwnedDocument selects one product only if sellerEmail owns it. A miss
// does not tell an absent product apart from someone else's.
func OwnedDocument(sellerEmail string, id primitive.ObjectID) Filter {
	return And{ByID(id), OwnerFilter(sellerEmail)}
}

func containsAny(q string, fields []string) Filter {
	pattern := regexp.QuoteMeta(q)
	or := make(Or, 0, len(fields))
	for _, field := range fields {
		or = append(or, Regex{Field: field, Pattern: pattern})
	}
	return or
}

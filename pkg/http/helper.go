package http

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/validation"

	"github.com/julienschmidt/httprouter"
)

const MaxPageSize = 100

// ExtractLimitOffset reads optional limit/offset query parameters. A missing
// limit yields 0, which repositories treat as "no limit".
func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = min(v, MaxPageSize)
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return limit, offset, nil
}

// PathID parses the numeric :id route parameter. Non-numeric ids can never
// match a record, so they surface as the resource's not-found error.
func PathID(ps httprouter.Params, resource string) (int64, error) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NotFound(resource)
	}
	return id, nil
}

// typeErrorRecorder is implemented by request inputs that carry decode
// failures through to validation.
type typeErrorRecorder interface {
	SetTypeErrors(fields apperrors.FieldErrors)
}

// DecodeBody decodes a JSON object request body one member at a time. An empty
// body decodes to the zero value so that validation can report the missing
// fields. Numeric strings such as "200.00" are accepted for number fields.
// Members of the wrong JSON type are named using messages: when dst records
// type errors they are handed over for validation to report together with
// the other violations, otherwise they are returned as a validation error.
func DecodeBody(r *http.Request, dst any, messages validation.Messages) error {
	var members map[string]json.RawMessage
	err := json.NewDecoder(r.Body).Decode(&members)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.InvalidInput("Invalid request body")
	}

	keys := make([]string, 0, len(members))
	for key := range members {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := apperrors.FieldErrors{}
	for _, key := range keys {
		err := decodeMember(dst, key, members[key])
		if err == nil {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return apperrors.InvalidInput("Invalid request body")
		}
		fields.Add(key, messages.For(key, validation.TypeRule(typeErr.Type), ""))
	}

	if len(fields) == 0 {
		return nil
	}
	if recorder, ok := dst.(typeErrorRecorder); ok {
		recorder.SetTypeErrors(fields)
		return nil
	}
	return apperrors.Validation(fields)
}

func decodeMember(dst any, key string, value json.RawMessage) error {
	doc, err := json.Marshal(map[string]json.RawMessage{key: value})
	if err != nil {
		return err
	}

	err = json.Unmarshal(doc, dst)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && validation.TypeRule(typeErr.Type) == validation.RuleNumeric {
		if number, ok := numericString(value); ok {
			return decodeMember(dst, key, number)
		}
	}
	return err
}

// numericString converts a JSON string holding a decimal number into a JSON
// number.
func numericString(value json.RawMessage) (json.RawMessage, bool) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64)), true
}

// TotalCountHeader carries the collection size on list responses, whose bodies
// hold only the requested page.
const TotalCountHeader = "X-Total-Count"

func FormatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}

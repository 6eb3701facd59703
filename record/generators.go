package record

import (
	"strings"

	"github.com/prestix-studio/cloudns-api/parameters"
	"github.com/prestix-studio/cloudns-api/validation"
)

// A generator produces the parameter fields for one record type from the
// caller's argument map. Each type carries only the parameters that type
// needs, with the record value validated according to what the type stores.
type generator func(args map[string]any) []parameters.Field

var generators = map[string]generator{
	"A":     func(args map[string]any) []parameters.Field { return recordFields(args, "A", "ipv4") },
	"AAAA":  func(args map[string]any) []parameters.Field { return recordFields(args, "AAAA", "ipv6") },
	"MX":    mxFields,
	"CNAME": func(args map[string]any) []parameters.Field { return recordFields(args, "CNAME", "domain-name") },
	"TXT":   func(args map[string]any) []parameters.Field { return recordFields(args, "TXT", "valid") },
	"SPF":   func(args map[string]any) []parameters.Field { return recordFields(args, "SPF", "valid") },
	"NS":    func(args map[string]any) []parameters.Field { return recordFields(args, "NS", "domain-name") },
	"SRV":   srvFields,
	"WR":    wrFields,
	"ALIAS": func(args map[string]any) []parameters.Field { return recordFields(args, "ALIAS", "domain-name") },
	"RP":    func(args map[string]any) []parameters.Field { return recordFields(args, "RP", "valid") },
	"SSHFP": sshfpFields,
	"PTR":   ptrFields,
	"NAPTR": naptrFields,
	"CAA":   caaFields,
	"TLSA":  tlsaFields,
}

// recordFields builds the parameters shared by every record type.
func recordFields(args map[string]any, recordType, validateRecordAs string) []parameters.Field {
	fields := []parameters.Field{
		{Name: "domain-name", Value: args["domain_name"]},
		{Name: "host", Value: args["host"], Optional: true},
		{Name: "ttl", Value: args["ttl"]},
		{Name: "record", Value: args["record"], As: validateRecordAs},
		{Name: "record-type", Value: recordType},
	}
	if geo, ok := args["geodns_location"]; ok && geo != nil {
		fields = append(fields, parameters.Field{Name: "geodns-location", Value: geo})
	}
	return fields
}

func mxFields(args map[string]any) []parameters.Field {
	fields := recordFields(args, "MX", "domain-name")
	return append(fields, parameters.Field{
		Name:  "priority",
		Value: argOrDefault(args, "priority", 10),
	})
}

func srvFields(args map[string]any) []parameters.Field {
	fields := recordFields(args, "SRV", "domain-name")
	for _, name := range []string{"port", "priority", "weight"} {
		fields = append(fields, parameters.Field{
			Name:  name,
			Value: args[name],
			Min:   bound(0),
			Max:   bound(65535),
		})
	}
	return fields
}

func wrFields(args map[string]any) []parameters.Field {
	fields := recordFields(args, "WR", "valid")
	return append(fields,
		parameters.Field{Name: "redirect-type", Value: args["redirect_type"]},
		parameters.Field{Name: "frame", Value: argOrDefault(args, "frame", 0)},
		parameters.Field{Name: "frame-title", Value: args["frame_title"], Optional: true},
		parameters.Field{Name: "frame-description", Value: args["frame_description"], Optional: true},
		parameters.Field{Name: "frame-keywords", Value: args["frame_keywords"], Optional: true},
	)
}

func sshfpFields(args map[string]any) []parameters.Field {
	fields := recordFields(args, "SSHFP", "valid")
	return append(fields,
		parameters.Field{Name: "algorithm", Value: args["algorithm"]},
		parameters.Field{Name: "fptype", Value: args["fptype"]},
	)
}

// ptrFields forces the host to the zone apex: PTR records in a reverse zone
// always hang off "@".
func ptrFields(args map[string]any) []parameters.Field {
	fields := recordFields(args, "PTR", "domain-name")
	return replaceField(fields, parameters.Field{Name: "host", Value: "@"})
}

func naptrFields(args map[string]any) []parameters.Field {
	fields := dropField(recordFields(args, "NAPTR", "valid"), "record")
	for _, name := range []string{"order", "pref", "flag", "params", "regexp", "replace"} {
		fields = append(fields, parameters.Field{Name: name, Value: args[name]})
	}
	return fields
}

func caaFields(args map[string]any) []parameters.Field {
	fields := dropField(recordFields(args, "CAA", "valid"), "record")
	return append(fields,
		parameters.Field{Name: "caa_flag", Value: args["caa_flag"]},
		parameters.Field{Name: "caa_type", Value: args["caa_type"]},
		parameters.Field{Name: "caa_value", Value: args["caa_value"]},
	)
}

func tlsaFields(args map[string]any) []parameters.Field {
	fields := recordFields(args, "TLSA", "valid")
	fields = replaceField(fields, parameters.Field{
		Name:  "record",
		Value: args["record"],
		As:    "hexstring",
	})
	return append(fields,
		parameters.Field{Name: "tlsa_usage", Value: argOrDefault(args, "tlsa_usage", 0)},
		parameters.Field{Name: "tlsa_selector", Value: argOrDefault(args, "tlsa_selector", 0)},
		parameters.Field{Name: "tlsa_matching_type", Value: argOrDefault(args, "tlsa_matching_type", 0)},
	)
}

// buildParameters validates the record type, dispatches to its generator,
// and returns the validated parameter container for a create or update.
func buildParameters(args map[string]any) (*parameters.Parameters, error) {
	recordType, _ := args["record_type"].(string)
	if err := validation.Validate("record-type", recordType, validation.Options{}); err != nil {
		return nil, err
	}

	fields := generators[strings.ToUpper(recordType)](args)

	if id, ok := args["record_id"]; ok && id != nil {
		fields = append(fields, parameters.Field{Name: "record-id", Value: id})
	}

	return parameters.New(fields...)
}

func argOrDefault(args map[string]any, key string, fallback any) any {
	if value, ok := args[key]; ok && value != nil {
		return value
	}
	return fallback
}

func dropField(fields []parameters.Field, name string) []parameters.Field {
	kept := fields[:0]
	for _, f := range fields {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	return kept
}

func replaceField(fields []parameters.Field, replacement parameters.Field) []parameters.Field {
	for i := range fields {
		if fields[i].Name == replacement.Name {
			fields[i] = replacement
		}
	}
	return fields
}

func bound(n int) *int {
	return &n
}

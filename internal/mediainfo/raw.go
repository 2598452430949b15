package mediainfo

// rawReport mirrors the external inspector's top-level JSON envelope:
// { "media": { "track": [ {"@type": "General", ...}, ... ] } }. Every
// field in a mediainfo track comes back as a JSON string regardless of its
// logical type, and Menu (chapter) tracks use dynamic timestamp keys instead
// of a fixed field set, so each track decodes into a plain string map rather
// than a typed struct.
type rawReport struct {
	Media struct {
		Track []map[string]string `json:"track"`
	} `json:"media"`
}

package config

import "inventory-system/pkg/constants"

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

var UploadContexts = map[constants.UploadContext]UploadConfig{
	constants.UploadContextCertificate: {
		AllowedMimeTypes: []string{"application/pdf", "image/jpeg", "image/png"},
		MaxSizeMB:        20,
		PathPrefix:       "certificates",
	},
	constants.UploadContextPhoto: {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
		MaxSizeMB:        20,
		PathPrefix:       "photos",
	},
	constants.UploadContextManual: {
		AllowedMimeTypes: []string{
			"application/pdf",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/msword",
			"text/plain",
		},
		MaxSizeMB:  50,
		PathPrefix: "manuals",
	},
	constants.UploadContextImport: {
		AllowedMimeTypes: []string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		MaxSizeMB:        10,
	},
}

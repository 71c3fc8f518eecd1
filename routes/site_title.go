/*
 * Copyright 2026 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"os"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/template"
)

const (
	defaultSiteTitle = "Clinical Report Analysis"
	siteTitleEnvVar  = "SITE_TITLE"
)

func siteTitle() string {
	title := strings.TrimSpace(os.Getenv(siteTitleEnvVar))
	if title == "" {
		return defaultSiteTitle
	}

	return title
}

// SiteTitle exposes the page title to templates. SITE_TITLE overrides the
// default and is read once.
func SiteTitle() flamego.Handler {
	title := siteTitle()

	return func(data template.Data) {
		data["SiteTitle"] = title
	}
}

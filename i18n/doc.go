// Package i18n provides the default localization collaborator for the
// harness: locale-keyed string tables with BCP 47 best-match fallback
// and {{param}} interpolation.
package i18n

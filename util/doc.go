// Package util provides small parsing helpers shared by the subsl packages.
package util

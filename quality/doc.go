// Package quality measures reconstruction error between two rasters.
package quality

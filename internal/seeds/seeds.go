// Package seeds loads development fixtures (users, boats, zones) from a
// YAML file into the database. Existing rows are matched by their
// natural keys so re-running the seeder is harmless.
package seeds

import (
	"fmt"
	"os"

	"github.com/SeaWatch/SW-Backend/internal/auth"
	"github.com/SeaWatch/SW-Backend/internal/db"
	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/SeaWatch/SW-Backend/internal/geo"
	"github.com/SeaWatch/SW-Backend/internal/zones"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
		FullName string `yaml:"full_name"`
	} `yaml:"users"`

	Boats []struct {
		Name               string `yaml:"name"`
		RegistrationNumber string `yaml:"registration_number"`
		Owner              string `yaml:"owner"` // username, resolved to owner_id
		DeviceID           string `yaml:"device_id"`
		Status             string `yaml:"status"`
	} `yaml:"boats"`

	Zones []struct {
		Name        string       `yaml:"name"`
		Type        string       `yaml:"type"`
		Description string       `yaml:"description"`
		Color       string       `yaml:"color"`
		Circle      *struct {
			Center [2]float64 `yaml:"center"`
			Radius float64    `yaml:"radius"`
		} `yaml:"circle"`
		Polygon [][2]float64 `yaml:"polygon"`
	} `yaml:"zones"`
}

// SeedAll loads the fixture file and upserts its contents.
func SeedAll(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	userIDs, err := seedUsers(file)
	if err != nil {
		return err
	}
	if err := seedBoats(file, userIDs); err != nil {
		return err
	}
	return seedZones(file, userIDs)
}

func seedUsers(file seedFile) (map[string]string, error) {
	ids := make(map[string]string)

	for _, u := range file.Users {
		var existing auth.User
		err := db.DB.First(&existing, "username = ?", u.Username).Error
		if err == nil {
			ids[u.Username] = existing.UserID
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}

		user := auth.User{
			UserID:         uuid.NewString(),
			Username:       u.Username,
			HashedPassword: string(hashed),
			Role:           u.Role,
			FullName:       u.FullName,
		}
		if user.Role == "" {
			user.Role = auth.RoleFisherman
		}
		if err := db.DB.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		ids[u.Username] = user.UserID
	}

	return ids, nil
}

func seedBoats(file seedFile, userIDs map[string]string) error {
	for _, b := range file.Boats {
		var existing fleet.Boat
		err := db.DB.First(&existing, "registration_number = ?", b.RegistrationNumber).Error
		if err == nil {
			continue
		}

		boat := fleet.Boat{
			ID:                 uuid.New(),
			Name:               b.Name,
			RegistrationNumber: b.RegistrationNumber,
			OwnerID:            userIDs[b.Owner],
			DeviceID:           b.DeviceID,
			Status:             b.Status,
		}
		if boat.Status == "" {
			boat.Status = "active"
		}
		if err := db.DB.Create(&boat).Error; err != nil {
			return fmt.Errorf("seed boat %s: %w", b.Name, err)
		}
	}
	return nil
}

func seedZones(file seedFile, userIDs map[string]string) error {
	var adminID string
	for _, id := range userIDs {
		adminID = id
		break
	}

	for _, z := range file.Zones {
		var existing zones.Zone
		err := db.DB.First(&existing, "name = ?", z.Name).Error
		if err == nil {
			continue
		}

		var geometry geo.Geometry
		switch {
		case z.Circle != nil:
			geometry = geo.CircleGeometry(
				geo.Point{Lat: z.Circle.Center[0], Lng: z.Circle.Center[1]},
				z.Circle.Radius,
			)
		case len(z.Polygon) > 0:
			vertices := make([]geo.Point, len(z.Polygon))
			for i, p := range z.Polygon {
				vertices[i] = geo.Point{Lat: p[0], Lng: p[1]}
			}
			geometry = geo.PolygonGeometry(vertices)
		default:
			return fmt.Errorf("zone %s has neither circle nor polygon", z.Name)
		}
		if err := geometry.Validate(); err != nil {
			return fmt.Errorf("zone %s: %w", z.Name, err)
		}

		zone := zones.Zone{
			ID:          uuid.New(),
			Name:        z.Name,
			Type:        zones.ZoneType(z.Type),
			Geometry:    geometry,
			Description: z.Description,
			Color:       z.Color,
			CreatedBy:   adminID,
		}
		if !zone.Type.Valid() {
			return fmt.Errorf("zone %s has unknown type %q", z.Name, z.Type)
		}
		if zone.Color == "" {
			zone.Color = "#0000FF"
		}
		if err := db.DB.Create(&zone).Error; err != nil {
			return fmt.Errorf("seed zone %s: %w", z.Name, err)
		}
	}
	return nil
}

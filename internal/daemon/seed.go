package daemon

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/config"
	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/db/controller/role"
	"github.com/anighost1/pp-be/internal/db/controller/user"
	"github.com/anighost1/pp-be/internal/db/models"
	"github.com/anighost1/pp-be/internal/uniuri"
)

const generatedPasswordLen = 20

// credentialsOut receives a generated administrator password. It is kept out
// of the logger, whose writers may be rolling files.
var credentialsOut io.Writer = os.Stderr

// seed creates the built-in permissions, the superuser role and, on an empty
// user table, the administrator account.
func seed(cfg *config.Config, db *gorm.DB) error {
	builtin := make([]models.Permission, 0, len(auth.Permissions()))

	for _, name := range auth.Permissions() {
		p, err := permission.FirstOrCreate(db, name)
		if err != nil {
			return err
		}
		builtin = append(builtin, *p)
	}

	superRole, err := role.FirstOrCreate(db, cfg.Auth.SuperAdminRole, nil)
	if err != nil {
		return err
	}

	if err = role.AttachPermissions(db, superRole.ID, builtin); err != nil {
		return err
	}

	var count int64
	if err = db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if count > 0 {
		return nil
	}

	password := cfg.Auth.AdminPassword
	generated := password == ""
	if generated {
		password = uniuri.NewLen(generatedPasswordLen)
	}

	admin, err := user.Create(db, cfg.Auth.AdminUsername, "", password)
	if err != nil {
		return err
	}

	if err = user.ConnectRoles(db, admin.ID, []uint{superRole.ID}); err != nil {
		return err
	}

	if generated {
		fmt.Fprintf(credentialsOut, "administrator %q created with password %s\n", admin.Username, password)
		log.Warn().Str("username", admin.Username).
			Msg("created administrator with a generated password printed to stderr, change it after the first login")
	} else {
		log.Info().Str("username", admin.Username).Msg("created administrator")
	}

	return nil
}

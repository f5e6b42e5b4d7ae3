package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/reelhouse/rental/internal/app/api/server"
	"github.com/reelhouse/rental/internal/app/jobs"
	"github.com/reelhouse/rental/internal/app/service/history"
	"github.com/reelhouse/rental/internal/app/service/movie"
	"github.com/reelhouse/rental/internal/app/service/rent"
	"github.com/reelhouse/rental/internal/app/service/user"
	"github.com/reelhouse/rental/internal/platform/db"
	"github.com/reelhouse/rental/internal/storage"
	"github.com/reelhouse/rental/pkg/config"
	"github.com/reelhouse/rental/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	storage.Module,
	movie.Module,
	user.Module,
	rent.Module,
	history.Module,
	jobs.Module,
	server.Module,
)

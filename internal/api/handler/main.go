package handler

import (
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container   *do.Injector
	Mode        string
	Origins     []string
	APIKey      string
	AdminAPIKey string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "⚡")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(AuthnCollaborator(cfg.APIKey))
		routesAPIv1.GET("", Hello)

		i := groupIngress{cfg.Container}
		routesAPIv1.POST("/events", i.PostActivity)

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/user/:user/rank", u.GetRank)
		routesAPIv1.GET("/user/:user/achievements", u.GetAchievements)
		routesAPIv1.GET("/user/:user/challenges", u.GetWeeklyChallenges)
		routesAPIv1.GET("/user/:user/rewards", u.GetRewardIntents)
		routesAPIv1.POST("/user/:user/daily", u.ClaimDaily)
		routesAPIv1.POST("/user/:user/prestige", u.Prestige)

		l := groupLeaderboard{cfg.Container}
		routesAPIv1.GET("/leaderboard/top", l.GetTopOverall)
		routesAPIv1.GET("/leaderboard/:guild", l.GetLeaderboard)

		s := groupSeason{cfg.Container}
		routesAPIv1.GET("/season", s.Current)
		routesAPIv1.GET("/season/event", s.LatestEvent)

		sh := groupShop{cfg.Container}
		routesAPIv1.GET("/shop", sh.ListItems)
		routesAPIv1.POST("/shop/:item/purchase", sh.Purchase)

		rw := groupReward{cfg.Container}
		routesAPIv1.GET("/rewards/rules", rw.ListRules)
		routesAPIv1.GET("/rewards/queue/:guild", rw.QueueDepth)
		routesAPIv1.POST("/rewards/queue/:guild/pop", rw.PopQueued)

		routesAPIv1Admin := routesAPIv1.Group("/admin")
		{
			routesAPIv1Admin.Use(AuthnAdmin(cfg.AdminAPIKey))

			routesAPIv1Admin.POST("/season/start", s.Start)
			routesAPIv1Admin.POST("/season/pause", s.Pause)
			routesAPIv1Admin.POST("/season/resume", s.Resume)
			routesAPIv1Admin.POST("/season/end", s.End)
			routesAPIv1Admin.POST("/season/event", s.AddEvent)

			routesAPIv1Admin.POST("/rewards/rules", rw.AddRule)

			routesAPIv1Admin.POST("/shop", sh.AddItem)
			routesAPIv1Admin.DELETE("/shop/:item", sh.RemoveItem)

			a := groupAchievement{cfg.Container}
			routesAPIv1Admin.POST("/achievements", a.Add)

			ch := groupChallenge{cfg.Container}
			routesAPIv1Admin.POST("/challenges", ch.Add)
		}
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}

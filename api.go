package main

import (
	"errors"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

type gameRequest struct {
	White string
	Black string
}

type playRequest struct {
	Move string
}

type gameResponse struct {
	Href string
	Game gameView
}

type gamesResponse struct {
	Href  string
	Games []gameView
}

type playsResponse struct {
	Href  string
	Plays []string
}

func errToHTTP(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errSessionNotFound) {
		return echo.ErrNotFound
	}
	return err
}

func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func requestSession(c echo.Context, games *sessions) (*session, error) {
	id, err := requestID(c)
	if err != nil {
		return nil, err
	}
	return games.get(id)
}

func gameHref(id uuid.UUID) string {
	return path.Join("/games", id.String())
}

func responseGame(view gameView) gameResponse {
	return gameResponse{Game: view, Href: gameHref(view.GameID)}
}

func responsePlays(id uuid.UUID, moves []string) playsResponse {
	return playsResponse{Plays: moves, Href: path.Join(gameHref(id), "plays")}
}

func apiHandler(games *sessions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/games", func(c echo.Context) error {
		return c.JSON(http.StatusOK, gamesResponse{Games: games.list(), Href: "/games"})
	})
	e.POST("/games", func(c echo.Context) error {
		request := gameRequest{White: agentUser, Black: agentEngine}
		if err := c.Bind(&request); err != nil {
			return err
		}
		s, err := games.create([2]string{request.White, request.Black})
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusCreated, responseGame(s.view()))
	})
	e.GET("/games/:id", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		s, err := games.get(id)
		if err == nil {
			return c.JSON(http.StatusOK, responseGame(s.view()))
		}
		view, _, err := games.stored(id)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseGame(view))
	})
	e.GET("/games/:id/plays", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		s, err := games.get(id)
		if err == nil {
			return c.JSON(http.StatusOK, responsePlays(id, s.moves()))
		}
		_, moves, err := games.stored(id)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responsePlays(id, moves))
	})
	e.PUT("/games/:id", func(c echo.Context) error {
		s, err := requestSession(c, games)
		if err != nil {
			return errToHTTP(err)
		}
		var request playRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		o, err := parseOrder(request.Move)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := s.submit(o); err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusAccepted, responseGame(s.view()))
	})
	e.DELETE("/games/:id", func(c echo.Context) error {
		s, err := requestSession(c, games)
		if err != nil {
			return errToHTTP(err)
		}
		s.stop()
		return c.JSON(http.StatusOK, responseGame(s.view()))
	})

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	return e
}

package main

import (
	"errors"
	"strconv"
	"strings"
)

type console struct {
	s *session
}

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")

var consoleCommands = map[string]func(s *session, args []string) ([]string, error){
	"fuse": func(s *session, args []string) ([]string, error) {
		if len(args) == 0 {
			return nil, errArgumentNumber
		}
		var res []string
		for _, path := range args {
			st, err := s.fuse(path)
			if err != nil {
				return res, err
			}
			res = append(res, path+" "+strconv.Itoa(st.Inserted)+" "+strconv.Itoa(st.Updated))
		}
		return res, nil
	},
	"stats": func(s *session, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		var res []string
		for _, f := range s.mapper.Stats().Fields() {
			res = append(res, f.Key+" "+f.Value)
		}
		return res, nil
	},
	"size": func(s *session, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return []string{
			strconv.Itoa(s.frames),
			strconv.Itoa(s.mapper.Scene().Len()),
			strconv.Itoa(len(s.mapper.Preview())),
		}, nil
	},
	"save_scene": func(s *session, args []string) ([]string, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		return nil, s.saveScene(args[0])
	},
	"save_preview": func(s *session, args []string) ([]string, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		return nil, s.savePreview(args[0])
	},
	"config": func(s *session, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		b, err := marshalConfig(s.mapper.Config())
		if err != nil {
			return nil, err
		}
		return []string{strings.TrimRight(string(b), "\n")}, nil
	},
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	res, err := fn(c.s, args[1:])
	return strings.Join(res, "\n"), err
}

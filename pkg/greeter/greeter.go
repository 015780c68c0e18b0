// Package greeter implements the Greeter service shared by the supplier and
// vendor servers.
package greeter

import (
	"context"

	pb "github.com/weiawesome/supplyfinder/proto/supplyfinder"
)

// Prefix is prepended to every greeted name.
const Prefix = "Hello "

// Greet returns Prefix + name.
func Greet(name string) string {
	return Prefix + name
}

// Server serves Greeter.Greet.
type Server struct {
	pb.UnimplementedGreeterServer
}

func NewServer() *Server {
	return &Server{}
}

func (s *Server) Greet(ctx context.Context, req *pb.GreetRequest) (*pb.GreetReply, error) {
	return &pb.GreetReply{Message: Greet(req.GetName())}, nil
}

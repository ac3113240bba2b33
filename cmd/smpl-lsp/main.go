// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"smpl/internal/lsp"
)

const lsName = "smpl" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	verbosity := pflag.IntP("verbose", "v", 1, "log verbosity")
	debug := pflag.Bool("debug", false, "enable glsp protocol debug logs")
	pflag.Parse()

	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("smpl.lsp")

	smplHandler := lsp.NewSmplHandler()

	handler = protocol.Handler{
		Initialize:                     smplHandler.Initialize,
		Initialized:                    smplHandler.Initialized,
		Shutdown:                       smplHandler.Shutdown,
		SetTrace:                       smplHandler.SetTrace,
		TextDocumentDidOpen:            smplHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           smplHandler.TextDocumentDidClose,
		TextDocumentDidChange:          smplHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: smplHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, *debug)

	log.Infof("starting SMPL LSP server %s", version)

	// stdio is what most editors use to talk to a language server
	if err := s.RunStdio(); err != nil {
		log.Errorf("error running SMPL LSP server: %s", err)
		os.Exit(1)
	}
}
